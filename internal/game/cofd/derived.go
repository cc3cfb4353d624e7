package cofd

// Traits is the set of advantages derived from a character's ratings.
type Traits struct {
	Defense      int `json:"defense"`
	Initiative   int `json:"initiative"`
	Speed        int `json:"speed"`
	Size         int `json:"size"`
	HealthMax    int `json:"healthMax"`
	WillpowerMax int `json:"willpowerMax"`
	ClarityMax   int `json:"clarityMax,omitempty"`
	GlamourMax   int `json:"glamourMax,omitempty"`
}

// ClampSize limits size to MinSize..MaxSize.
func ClampSize(size int) int {
	return max(MinSize, min(size, MaxSize))
}

// Defense returns the lower of Dexterity and Wits plus Athletics.
func Defense(c *Core) int {
	return min(c.Attribute(Dexterity), c.Attribute(Wits)) + c.Skill(Athletics)
}

// Initiative returns Dexterity + Composure.
func Initiative(c *Core) int {
	return c.Attribute(Dexterity) + c.Attribute(Composure)
}

// Speed returns Size + Dexterity + Strength.
func Speed(c *Core) int {
	return ClampSize(c.Size) + c.Attribute(Dexterity) + c.Attribute(Strength)
}

// HealthMax returns Size + Stamina.
func HealthMax(c *Core) int {
	return ClampSize(c.Size) + c.Attribute(Stamina)
}

// WillpowerMax returns Resolve + Composure.
func WillpowerMax(c *Core) int {
	return c.Attribute(Resolve) + c.Attribute(Composure)
}

// ClarityMax returns Wits + Composure.
func ClarityMax(c *Core) int {
	return c.Attribute(Wits) + c.Attribute(Composure)
}

var glamourByWyrd = [...]int{10, 11, 12, 13, 15, 20, 25, 30, 50, 75}

// GlamourMax returns the maximum Glamour for a Wyrd rating, clamped to 1..MaxWyrd.
func GlamourMax(wyrd int) int {
	wyrd = max(1, min(wyrd, MaxWyrd))
	return glamourByWyrd[wyrd-1]
}

// Calculate evaluates the advantages shared by every character.
//
// Postcondition: c is not modified; repeated calls with an unchanged c return equal Traits.
func Calculate(c *Core) Traits {
	return Traits{
		Defense:      Defense(c),
		Initiative:   Initiative(c),
		Speed:        Speed(c),
		Size:         ClampSize(c.Size),
		HealthMax:    HealthMax(c),
		WillpowerMax: WillpowerMax(c),
	}
}

// CalculateChangeling adds Clarity and Glamour maxima to Calculate.
func CalculateChangeling(c *Changeling) Traits {
	t := Calculate(&c.Core)
	t.ClarityMax = ClarityMax(&c.Core)
	t.GlamourMax = GlamourMax(c.Wyrd)
	return t
}
