package hal

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Screen ScreenConfig
	Scale  int
	Title  string
	TPS    int
}

func (c WindowConfig) withDefaults() WindowConfig {
	c.Screen = c.Screen.withDefaults()
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Title == "" {
		c.Title = "Mandelbrot"
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}
