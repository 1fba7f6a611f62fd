package sentiment

// defaultSubjectivity 记录观点词的主观程度，只用于主观性评分。
var defaultSubjectivity = map[string]float64{
	// positive
	"amazing":   0.9,
	"awesome":   1.0,
	"beautiful": 1.0,
	"best":      0.3,
	"better":    0.5,
	"brilliant": 1.0,
	"calm":      0.75,
	"cheerful":  0.8,
	"confident": 0.8,
	"content":   0.6,
	"delighted": 0.9,
	"enjoy":     0.5,
	"enjoyed":   0.5,
	"excellent": 1.0,
	"excited":   0.75,
	"fantastic": 0.9,
	"fine":      0.5,
	"fun":       0.2,
	"glad":      1.0,
	"good":      0.6,
	"grateful":  0.8,
	"great":     0.75,
	"happy":     1.0,
	"hopeful":   0.7,
	"joy":       0.9,
	"love":      0.6,
	"loved":     0.8,
	"lovely":    0.75,
	"lucky":     1.0,
	"nice":      1.0,
	"okay":      0.5,
	"ok":        0.5,
	"peaceful":  0.7,
	"perfect":   1.0,
	"pleased":   0.8,
	"positive":  0.55,
	"proud":     1.0,
	"relaxed":   0.7,
	"relieved":  0.7,
	"safe":      0.5,
	"strong":    0.73,
	"thankful":  0.8,
	"wonderful": 1.0,

	// negative
	"afraid":      0.9,
	"alone":       0.6,
	"angry":       1.0,
	"annoyed":     0.8,
	"anxious":     0.9,
	"ashamed":     0.9,
	"awful":       1.0,
	"bad":         0.67,
	"broken":      0.6,
	"depressed":   0.9,
	"desperate":   0.9,
	"die":         0.8,
	"dead":        0.4,
	"down":        0.29,
	"empty":       0.6,
	"exhausted":   0.8,
	"frustrated":  0.9,
	"furious":     1.0,
	"hate":        0.9,
	"helpless":    0.9,
	"hopeless":    1.0,
	"horrible":    1.0,
	"hurt":        0.8,
	"kill":        0.9,
	"lonely":      0.9,
	"lost":        0.5,
	"miserable":   1.0,
	"nervous":     0.9,
	"overwhelmed": 0.8,
	"pain":        0.8,
	"panic":       0.9,
	"sad":         1.0,
	"scared":      0.9,
	"sick":        0.86,
	"stressed":    0.8,
	"struggling":  0.6,
	"terrible":    1.0,
	"tired":       0.7,
	"unhappy":     0.9,
	"upset":       0.8,
	"useless":     0.6,
	"worried":     0.8,
	"worse":       0.6,
	"worst":       1.0,
	"worthless":   0.9,
}

var defaultIntensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.2,
	"so":         1.2,
	"extremely":  1.5,
	"incredibly": 1.4,
	"super":      1.3,
	"totally":    1.2,
	"truly":      1.2,
	"quite":      1.1,
	"pretty":     1.1,
	"bit":        0.6,
	"slightly":   0.6,
	"somewhat":   0.7,
	"little":     0.7,
}
