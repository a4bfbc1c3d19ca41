package service

import (
	"errors"
	"time"

	"github.com/nasifowls01-ui/opb/internal/duel"
)

// mockRepo is an in-memory Repo for lifecycle tests.
type mockRepo struct {
	profiles  map[string]*duel.PlayerProfile
	rosters   map[uint][]duel.RosterUnit
	economies map[uint]*duel.EconomyAccount
	records   map[uint]*duel.DuelRecord
	quests    map[uint]int
	outcomes  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		profiles:  map[string]*duel.PlayerProfile{},
		rosters:   map[uint][]duel.RosterUnit{},
		economies: map[uint]*duel.EconomyAccount{},
		records:   map[uint]*duel.DuelRecord{},
		quests:    map[uint]int{},
	}
}

func (m *mockRepo) addPlayer(id uint, uuid, name string, bot bool) {
	p := &duel.PlayerProfile{PlayerUUID: uuid, PlayerName: name, IsBot: bot}
	p.ID = id
	m.profiles[uuid] = p
}

func (m *mockRepo) GetProfileByUUID(uuid string) (*duel.PlayerProfile, error) {
	p, ok := m.profiles[uuid]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}

func (m *mockRepo) GetRoster(playerID uint) ([]duel.RosterUnit, error) {
	return m.rosters[playerID], nil
}

func (m *mockRepo) GetEconomy(playerID uint) (*duel.EconomyAccount, error) {
	if eco, ok := m.economies[playerID]; ok {
		return eco, nil
	}
	return &duel.EconomyAccount{PlayerID: playerID}, nil
}

func (m *mockRepo) CreditEconomy(playerID uint, currency int64, xp int) error {
	eco, ok := m.economies[playerID]
	if !ok {
		eco = &duel.EconomyAccount{PlayerID: playerID}
		m.economies[playerID] = eco
	}
	eco.Currency += currency
	eco.XP += xp
	return nil
}

func (m *mockRepo) GetDuelRecord(playerID uint) (*duel.DuelRecord, error) {
	if rec, ok := m.records[playerID]; ok {
		return rec, nil
	}
	return &duel.DuelRecord{PlayerID: playerID}, nil
}

func (m *mockRepo) UpdateDuelRecord(playerID uint, mutate func(*duel.DuelRecord) error) error {
	rec, ok := m.records[playerID]
	if !ok {
		rec = &duel.DuelRecord{PlayerID: playerID}
		m.records[playerID] = rec
	}
	return mutate(rec)
}

func (m *mockRepo) RecordDuelOutcome(winnerID, loserID uint) error {
	m.outcomes++
	return nil
}

func (m *mockRepo) IncrementQuestProgress(playerID uint, action string, amount int) error {
	m.quests[playerID] += amount
	return nil
}

func rosterUnit(id uint, name string, power, atkMin, atkMax, health int) duel.RosterUnit {
	def := duel.UnitDefinition{Name: name, Power: power, AttackMin: atkMin, AttackMax: atkMax, MaxHealth: health}
	def.ID = id
	return duel.RosterUnit{Def: def}
}

func currentBucketRecord(playerID uint) *duel.DuelRecord {
	rec := &duel.DuelRecord{PlayerID: playerID}
	rec.RollWindows(time.Now().UTC().Unix() / 86400)
	return rec
}
