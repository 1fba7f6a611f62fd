package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/moodchat/backend/internal/config"
	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

func newRootCmd() *cobra.Command {
	var (
		locale   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "moodchat",
		Short: "Chat with a supportive assistant that tracks your mood",
		Long: `moodchat runs a local chat session in the terminal.

Every message is scored for sentiment, screened for crisis language and
answered by the configured language model. Commands:
  /summary     show the mood summary for this session
  /reset       start a fresh session
  /resources   show crisis resources
  /quit        leave`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				if errors.Is(err, config.ErrCredentialMissing) {
					return fmt.Errorf("set LLM_API_KEY or GOOGLE_AI_API_KEY before starting: %w", err)
				}
				return err
			}

			level := cfg.Log.Level
			if logLevel != "" {
				level = logLevel
			}
			// 日志写到 stderr，避免和对话输出混在一起。
			logger.Configure(level, os.Stderr)

			if locale == "" {
				locale = cfg.Crisis.Locale
			}
			store, err := resource.Open(cfg.Crisis.ResourcesFile)
			if err != nil {
				return err
			}
			notice, ok := resource.Resolve(store, strings.ToLower(locale))
			if !ok {
				return fmt.Errorf("%w for locale %q", resource.ErrNoNotice, locale)
			}

			generator, err := ai.NewGeneratorFromConfig(cmd.Context(), cfg.AI)
			if err != nil {
				return err
			}

			r := &repl{
				orch:   chatservice.NewOrchestrator(generator),
				notice: notice,
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
			}
			return r.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "crisis resource locale (defaults to CRISIS_LOCALE)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}
