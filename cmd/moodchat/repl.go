package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

var timeNow = func() time.Time { return time.Now().UTC() }

type repl struct {
	orch   *chatservice.Orchestrator
	notice resource.Notice
	in     io.Reader
	out    io.Writer
}

// run reads lines until EOF or /quit. The session lives only for the
// duration of the process.
func (r *repl) run(ctx context.Context) error {
	session := chat.NewSession(uuid.NewString(), timeNow())
	fmt.Fprintln(r.out, renderBanner())

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/summary":
			fmt.Fprintln(r.out, renderSummary(r.orch.Summarize(*session)))
			continue
		case "/reset":
			r.orch.Reset(session)
			fmt.Fprintln(r.out, mutedStyle.Render("Conversation cleared."))
			continue
		case "/resources":
			fmt.Fprintln(r.out, renderNotice(r.notice))
			continue
		}

		hook := chatservice.WithCrisisHook(func() {
			fmt.Fprintln(r.out, renderNotice(r.notice))
		})
		turn, ok := r.orch.RunTurn(ctx, session, line, hook)
		if !ok {
			continue
		}
		fmt.Fprintln(r.out, renderTurn(turn))

		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}
