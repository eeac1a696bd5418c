// Package menu drives the interactive screens: it collects raw input, hands it
// to the validators, runs the requested flow and asks whether to continue.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"StockMonitor/internal/calendar"
	"StockMonitor/internal/collector"
	"StockMonitor/internal/model"
	"StockMonitor/internal/render"
)

// State is a node of the menu tree.
type State int

const (
	StateMain State = iota
	StateStock
	StateCrypto
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateStock:
		return "stock"
	case StateCrypto:
		return "crypto"
	case StateQuit:
		return "quit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrTooManyAttempts aborts a flow when a prompt keeps receiving invalid input.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// errQuit unwinds to Run when the user quits or input ends.
var errQuit = errors.New("quit")

// Controller sequences prompts, fetches, calculations and rendering.
type Controller struct {
	Fetcher  collector.Fetcher
	Calendar *calendar.Calendar
	Console  *render.Console
	Logger   *zap.Logger
	// Now is the clock used for "today" and "yesterday".
	Now func() time.Time
	// MaxAttempts bounds re-prompting per field; 0 means unbounded.
	MaxAttempts int

	in *bufio.Scanner
}

// NewController creates a Controller reading answers from in.
func NewController(fetcher collector.Fetcher, cal *calendar.Calendar, console *render.Console, in io.Reader, maxAttempts int, logger *zap.Logger) *Controller {
	return &Controller{
		Fetcher:     fetcher,
		Calendar:    cal,
		Console:     console,
		Logger:      logger,
		Now:         time.Now,
		MaxAttempts: maxAttempts,
		in:          bufio.NewScanner(in),
	}
}

// Run shows the main menu and loops until the user quits or input ends.
// Quitting is not an error.
func (c *Controller) Run(ctx context.Context) error {
	c.Console.Banner("STOCK MONITOR")
	state := StateMain
	for state != StateQuit {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := c.step(ctx, state)
		switch {
		case errors.Is(err, errQuit):
			next = StateQuit
		case err != nil:
			c.Console.Error(err)
			next = state
		}
		c.Logger.Debug("menu transition", zap.Stringer("from", state), zap.Stringer("to", next))
		state = next
	}
	c.Console.Quit()
	return nil
}

func (c *Controller) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateMain:
		return c.mainMenu()
	case StateStock:
		return c.marketMenu(ctx, model.MarketStocks, state)
	case StateCrypto:
		return c.marketMenu(ctx, model.MarketCrypto, state)
	default:
		return StateQuit, nil
	}
}

func (c *Controller) mainMenu() (State, error) {
	c.Console.Menu([]render.Option{
		{Key: "1", Label: "Stock Menu", Tone: render.ToneGain},
		{Key: "2", Label: "Crypto Menu", Tone: render.TonePast},
		{Key: "Q", Label: "Quit", Tone: render.ToneLoss},
	})
	choice, err := ask(c, "Enter choice: ", choices("1", "2", "Q"))
	if err != nil {
		return StateMain, err
	}
	switch choice {
	case "1":
		return StateStock, nil
	case "2":
		return StateCrypto, nil
	default:
		return StateQuit, nil
	}
}

func (c *Controller) marketMenu(ctx context.Context, market model.Market, state State) (State, error) {
	title := "STOCK MENU"
	if market == model.MarketCrypto {
		title = "CRYPTO MENU"
	}
	c.Console.Banner(title)
	c.Console.Menu([]render.Option{
		{Key: "1", Label: "Aggregates (Bars)", Tone: render.ToneLoss},
		{Key: "2", Label: "Daily Open/Close", Tone: render.TonePast},
		{Key: "3", Label: "Investment Growth Calculator", Tone: render.ToneGain},
		{Key: "B", Label: "Back"},
		{Key: "Q", Label: "Quit"},
	})
	choice, err := ask(c, "Enter choice: ", choices("1", "2", "3", "B", "Q"))
	if err != nil {
		return state, err
	}

	var flow func(context.Context, model.Market) error
	switch choice {
	case "1":
		flow = c.candlesFlow
	case "2":
		flow = c.openCloseFlow
	case "3":
		flow = c.growthFlow
	case "B":
		return StateMain, nil
	default:
		return StateQuit, nil
	}

	if err := flow(ctx, market); err != nil {
		if errors.Is(err, errQuit) {
			return StateQuit, err
		}
		c.Logger.Warn("flow aborted", zap.String("market", string(market)), zap.String("choice", choice), zap.Error(err))
		c.Console.Error(err)
		return state, nil
	}
	return c.continueOrQuit(state)
}

// continueOrQuit treats anything but Q as continue.
func (c *Controller) continueOrQuit(state State) (State, error) {
	c.Console.Menu([]render.Option{
		{Key: "C", Label: "CONTINUE", Tone: render.ToneGain},
		{Key: "Q", Label: "QUIT", Tone: render.ToneLoss},
	})
	answer, err := c.line("Enter choice: ")
	if err != nil {
		return StateQuit, err
	}
	if strings.EqualFold(strings.TrimSpace(answer), "Q") {
		return StateQuit, nil
	}
	return state, nil
}

// line prints label and reads one line of input. End of input means quit.
func (c *Controller) line(label string) (string, error) {
	fmt.Fprint(c.Console.Out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.Logger.Warn("reading input failed", zap.Error(err))
		}
		return "", errQuit
	}
	return c.in.Text(), nil
}

// ask re-prompts until parse accepts the answer or the attempt budget runs out.
func ask[T any](c *Controller, label string, parse func(string) (T, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		s, err := c.line(label)
		if err != nil {
			return zero, err
		}
		v, err := parse(s)
		if err == nil {
			return v, nil
		}
		if c.MaxAttempts > 0 && attempt >= c.MaxAttempts {
			return zero, fmt.Errorf("%w: %v", ErrTooManyAttempts, err)
		}
		c.Console.Error(err)
	}
}

// choices accepts one of the given menu keys, case-insensitively.
func choices(keys ...string) func(string) (string, error) {
	return func(s string) (string, error) {
		s = strings.ToUpper(strings.TrimSpace(s))
		for _, k := range keys {
			if s == k {
				return k, nil
			}
		}
		return "", fmt.Errorf("please enter one of %s", strings.Join(keys, ", "))
	}
}
