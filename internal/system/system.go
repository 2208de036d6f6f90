// Package system wraps the console and input device plumbing used when
// feltview drives a kiosk display directly.
package system

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

func withLog(l logger, what string, err error) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s failed: %v", what, err)
	} else {
		l.Infof("tty", "%s done", what)
	}
	return err
}

func SetGraphicsModeWithLog(l logger) error {
	return withLog(l, "KD_GRAPHICS", SetGraphicsMode())
}

func RestoreTextModeWithLog(l logger) error {
	return withLog(l, "KD_TEXT", RestoreTextMode())
}

func HideCursorWithLog(l logger) error { return withLog(l, "hide cursor", HideCursor()) }

func ShowCursorWithLog(l logger) error { return withLog(l, "show cursor", ShowCursor()) }
