package dnd5e

import (
	"fmt"
	"strings"
)

// Copper-piece exchange rates.
const (
	CopperPerSilver   = 10
	CopperPerElectrum = 50
	CopperPerGold     = 100
	CopperPerPlatinum = 1000
)

// CoinPurse holds a character's coins by denomination.
type CoinPurse struct {
	Copper   int `json:"copper"`
	Silver   int `json:"silver"`
	Electrum int `json:"electrum"`
	Gold     int `json:"gold"`
	Platinum int `json:"platinum"`
}

// TotalCopper returns the purse's value in copper pieces.
func (p CoinPurse) TotalCopper() int {
	return p.Copper +
		p.Silver*CopperPerSilver +
		p.Electrum*CopperPerElectrum +
		p.Gold*CopperPerGold +
		p.Platinum*CopperPerPlatinum
}

// String lists the non-zero denominations from most to least valuable, e.g. "3 gp, 5 cp".
// An empty purse renders as "0 cp".
func (p CoinPurse) String() string {
	var parts []string
	for _, c := range []struct {
		n      int
		suffix string
	}{
		{p.Platinum, "pp"}, {p.Gold, "gp"}, {p.Electrum, "ep"}, {p.Silver, "sp"}, {p.Copper, "cp"},
	} {
		if c.n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.suffix))
		}
	}
	if len(parts) == 0 {
		return "0 cp"
	}
	return strings.Join(parts, ", ")
}

// HitPoints tracks current, maximum and temporary hit points.
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Temp    int `json:"temp"`
}
