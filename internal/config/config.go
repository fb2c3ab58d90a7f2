// Package config loads the casino configuration from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/minicasino/internal/games"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "casino.hcl"

// Config is the complete casino configuration.
type Config struct {
	Credits     *CreditsConfig `hcl:"credits,block" validate:"required"`
	Listen      *ListenConfig  `hcl:"listen,block" validate:"required"`
	Games       []GameConfig   `hcl:"game,block" validate:"dive"`
	LogLevel    string         `hcl:"log_level,optional" validate:"oneof=debug info warn error"`
	HistorySize int            `hcl:"history_size,optional" validate:"gte=1,lte=10000"`
	Sound       *bool          `hcl:"sound,optional"`
}

// CreditsConfig controls the shared balance.
type CreditsConfig struct {
	Starting       int `hcl:"starting,optional" validate:"gt=0"`
	TopUpThreshold int `hcl:"top_up_threshold,optional" validate:"gte=0"`
	TopUpAmount    int `hcl:"top_up_amount,optional" validate:"gte=0"`
	Deposit        int `hcl:"deposit,optional" validate:"gte=0"`
}

// ListenConfig is where `casino serve` exposes metrics and the event feed.
type ListenConfig struct {
	Address string `hcl:"address,optional" validate:"required,hostname_port"`
}

// GameConfig holds the table limits and bet presets of one game.
type GameConfig struct {
	Name       string `hcl:"name,label" validate:"oneof=slots blackjack roulette poker baccarat dice"`
	DefaultBet int    `hcl:"default_bet,optional" validate:"gte=0"`
	MinBet     int    `hcl:"min_bet,optional" validate:"gte=0"`
	MaxBet     int    `hcl:"max_bet,optional" validate:"gte=0"`
	Step       int    `hcl:"step,optional" validate:"gte=0"`
	Chips      []int  `hcl:"chips,optional" validate:"dive,gt=0"`
}

// Limits converts the game's bounds into wager limits.
func (g GameConfig) Limits() games.Limits {
	return games.Limits{Min: g.MinBet, Max: g.MaxBet}
}

// NextBet moves current one notch up (dir > 0) or down (dir < 0). Games with
// a step move by that amount; the rest cycle through their chips. The result
// stays within the table limits.
func (g GameConfig) NextBet(current, dir int) int {
	next := current
	switch {
	case g.Step > 0:
		next = current + dir*g.Step
	case len(g.Chips) > 0 && dir > 0:
		next = g.Chips[len(g.Chips)-1]
		for _, c := range g.Chips {
			if c > current {
				next = c
				break
			}
		}
	case len(g.Chips) > 0 && dir < 0:
		next = g.Chips[0]
		for i := len(g.Chips) - 1; i >= 0; i-- {
			if g.Chips[i] < current {
				next = g.Chips[i]
				break
			}
		}
	}
	if next < g.MinBet {
		next = g.MinBet
	}
	if g.MaxBet > 0 && next > g.MaxBet {
		next = g.MaxBet
	}
	return next
}

var defaultGames = map[games.Game]GameConfig{
	games.GameSlots:     {DefaultBet: 10, MinBet: 1, Chips: []int{5, 10, 25, 50, 100}},
	games.GameBlackjack: {DefaultBet: 25, MinBet: 5, Step: 5},
	games.GameRoulette:  {DefaultBet: 10, MinBet: 1, Chips: []int{5, 10, 25, 50, 100}},
	games.GamePoker:     {DefaultBet: 25, MinBet: 1, Chips: []int{5, 10, 25, 50, 100}},
	games.GameBaccarat:  {DefaultBet: 50, MinBet: 1, Chips: []int{25, 50, 100, 250, 500}},
	games.GameDice:      {DefaultBet: 25, MinBet: 1, Chips: []int{10, 25, 50, 100, 250}},
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Game returns the settings of game g, falling back to the built-in ones.
func (c *Config) Game(g games.Game) GameConfig {
	for _, gc := range c.Games {
		if gc.Name == string(g) {
			return gc
		}
	}
	gc := defaultGames[g]
	gc.Name = string(g)
	return gc
}

// SoundEnabled reports whether notifications start switched on.
func (c *Config) SoundEnabled() bool {
	return c.Sound == nil || *c.Sound
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Credits == nil {
		c.Credits = &CreditsConfig{}
	}
	if c.Credits.Starting == 0 {
		c.Credits.Starting = 5000
	}
	if c.Credits.TopUpThreshold == 0 {
		c.Credits.TopUpThreshold = 100
	}
	if c.Credits.TopUpAmount == 0 {
		c.Credits.TopUpAmount = 1000
	}
	if c.Credits.Deposit == 0 {
		c.Credits.Deposit = 500
	}
	if c.Listen == nil {
		c.Listen = &ListenConfig{}
	}
	if c.Listen.Address == "" {
		c.Listen.Address = "127.0.0.1:9090"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HistorySize == 0 {
		c.HistorySize = 50
	}

	// Fill unset fields of configured games, then add the missing games.
	for i := range c.Games {
		def, ok := defaultGames[games.Game(c.Games[i].Name)]
		if !ok {
			continue
		}
		g := &c.Games[i]
		if g.MinBet == 0 {
			g.MinBet = def.MinBet
		}
		if g.DefaultBet == 0 {
			g.DefaultBet = max(def.DefaultBet, g.MinBet)
		}
		if g.Step == 0 && len(g.Chips) == 0 {
			g.Step = def.Step
			g.Chips = slices.Clone(def.Chips)
		}
	}
	for _, name := range games.AllGames {
		if !slices.ContainsFunc(c.Games, func(g GameConfig) bool { return g.Name == string(name) }) {
			gc := defaultGames[name]
			gc.Name = string(name)
			gc.Chips = slices.Clone(gc.Chips)
			c.Games = append(c.Games, gc)
		}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the relations between them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	seen := make(map[string]bool, len(c.Games))
	for _, g := range c.Games {
		if seen[g.Name] {
			return fmt.Errorf("game %s: configured more than once", g.Name)
		}
		seen[g.Name] = true
		if g.MaxBet > 0 && g.MaxBet < g.MinBet {
			return fmt.Errorf("game %s: max_bet %d is below min_bet %d", g.Name, g.MaxBet, g.MinBet)
		}
		if !g.Limits().Allows(g.DefaultBet) {
			return fmt.Errorf("game %s: default_bet %d is outside the table limits", g.Name, g.DefaultBet)
		}
	}
	return nil
}
