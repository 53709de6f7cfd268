package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/commands"
	"portfolio3d/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineRunes     = 200
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(0, 255, 136, 255)
	historyBg   = rl.NewColor(15, 15, 35, 235)
	historyText = rl.NewColor(200, 200, 200, 255)
)

// Console is the developer console at the bottom of the screen, toggled with the grave key.
// When open it takes keyboard input; lines starting with "cmd " run through the command
// registry, anything else is logged.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
}

// New returns a closed console that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and taking keyboard input.
func (c *Console) IsOpen() bool {
	return c.open
}

// Toggle opens or closes the console and drops any character typed with the toggle key.
func (c *Console) Toggle() {
	c.open = !c.open
	for rl.GetCharPressed() != 0 {
	}
}

// SetFont sets the font used to draw the console. Zero texture ID = use raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Submit handles one entered line. Exposed for the input loop and for scripted startup commands.
func (c *Console) Submit(line string) {
	if line == "" {
		return
	}
	c.log.Log(prompt + line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		return
	}
	if err := c.reg.Execute(args); err != nil {
		c.log.Warn().Err(err).Msg("command failed")
	}
}

// Update handles typing, paste, backspace and enter while open. Call once per frame.
func (c *Console) Update() {
	if !c.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		c.inputBuf += rl.GetClipboardText()
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			if ch == '`' || ch == '~' {
				continue
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		line := c.inputBuf
		c.inputBuf = ""
		c.Submit(line)
	}
}

// Draw draws the input bar and the recent log lines above it when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight

	historyH := int32(maxLinesOnScreen * lineHeight)
	historyY := barY - historyH
	if historyY < 0 {
		historyH = barY
		historyY = 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, historyY, screenW, historyH, historyBg)
	}
	lines := c.log.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i := start; i < len(lines); i++ {
		y := historyY + int32(i-start)*lineHeight + padding
		c.text(truncate(lines[i]), padding, y, historyText)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	c.text(prompt+c.inputBuf+"|", padding, barY+padding, rl.White)
}

func (c *Console) text(s string, x, y int32, col rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, col)
		return
	}
	rl.DrawText(s, x, y, fontSize, col)
}

func truncate(line string) string {
	if utf8.RuneCountInString(line) <= maxLineRunes {
		return line
	}
	r := []rune(line)
	return string(r[:maxLineRunes-3]) + "..."
}
