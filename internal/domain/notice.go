package domain

// Level is the visual severity of a notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelInfo
	LevelWarning
	LevelDanger
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	}
	return "unknown"
}

// Notice is a transient, dismissible message shown to the user.
type Notice struct {
	Level Level
	Text  string
}

func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }
func Danger(text string) Notice  { return Notice{Level: LevelDanger, Text: text} }
