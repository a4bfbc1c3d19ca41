package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

type specialEntry struct {
	Name  string `json:"name"`
	Range []int  `json:"range"`
}

type unitEntry struct {
	Name          string        `json:"name"`
	Power         int           `json:"power"`
	AttackRange   []int         `json:"attack_range"`
	SpecialAttack *specialEntry `json:"special_attack"`
	Health        int           `json:"health"`
}

type rawConfig struct {
	UnitList []unitEntry `json:"unit_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	Engine *struct {
		DecisionTimeoutSeconds  int `json:"decision_timeout_seconds"`
		ChallengeTimeoutSeconds int `json:"challenge_timeout_seconds"`
		ResolveDelaySeconds     int `json:"resolve_delay_seconds"`
	} `json:"engine"`
}

// LoadedConfig contains the unit catalog, the server address to bind to and
// the engine timings.
type LoadedConfig struct {
	Units            []duel.UnitDefinition
	ServerAddress    string
	DecisionTimeout  time.Duration
	ChallengeTimeout time.Duration
	ResolveDelay     time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `unit_list` (snake_case) with at least one valid unit entry.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.UnitList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: unit_list is empty (provide a 'unit_list' array)", path)
	}

	out := make([]duel.UnitDefinition, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: unit entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate unit name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		if len(e.AttackRange) != 2 || e.AttackRange[0] > e.AttackRange[1] || e.AttackRange[0] < 0 {
			return nil, fmt.Errorf("config file %s: unit '%s' needs attack_range [min,max] with 0 <= min <= max", path, e.Name)
		}
		if e.Health <= 0 {
			return nil, fmt.Errorf("config file %s: unit '%s' needs positive health", path, e.Name)
		}
		def := duel.UnitDefinition{
			Name:      e.Name,
			Power:     e.Power,
			AttackMin: e.AttackRange[0],
			AttackMax: e.AttackRange[1],
			MaxHealth: e.Health,
		}
		if e.SpecialAttack != nil {
			if e.SpecialAttack.Name == "" {
				return nil, fmt.Errorf("config file %s: unit '%s' special_attack missing 'name'", path, e.Name)
			}
			if len(e.SpecialAttack.Range) != 2 || e.SpecialAttack.Range[0] > e.SpecialAttack.Range[1] || e.SpecialAttack.Range[0] < 0 {
				return nil, fmt.Errorf("config file %s: unit '%s' special_attack needs range [min,max] with 0 <= min <= max", path, e.Name)
			}
			def.HasSpecial = true
			def.SpecialName = e.SpecialAttack.Name
			def.SpecialMin = e.SpecialAttack.Range[0]
			def.SpecialMax = e.SpecialAttack.Range[1]
		}
		out = append(out, def)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	cfg := &LoadedConfig{
		Units:            out,
		ServerAddress:    addr,
		DecisionTimeout:  30 * time.Second,
		ChallengeTimeout: 30 * time.Second,
		ResolveDelay:     2 * time.Second,
	}
	if rc.Engine != nil {
		if rc.Engine.DecisionTimeoutSeconds > 0 {
			cfg.DecisionTimeout = time.Duration(rc.Engine.DecisionTimeoutSeconds) * time.Second
		}
		if rc.Engine.ChallengeTimeoutSeconds > 0 {
			cfg.ChallengeTimeout = time.Duration(rc.Engine.ChallengeTimeoutSeconds) * time.Second
		}
		if rc.Engine.ResolveDelaySeconds > 0 {
			cfg.ResolveDelay = time.Duration(rc.Engine.ResolveDelaySeconds) * time.Second
		}
	}
	return cfg, nil
}
