package cofd

// Seeming is a Changeling's fae aspect.
type Seeming struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Blessing    string `json:"blessing,omitempty" yaml:"blessing"`
	Curse       string `json:"curse,omitempty" yaml:"curse"`
	Regalia     string `json:"regalia,omitempty" yaml:"regalia"`
}

// Kith refines a Seeming.
type Kith struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Blessing    string `json:"blessing,omitempty" yaml:"blessing"`
}

// Court is a seasonal court a Changeling may join.
type Court struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Emotion     string `json:"emotion,omitempty" yaml:"emotion"`
}

// Regalia is a family of contracts.
type Regalia struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// ContractType categorises contracts (e.g. Crown, Jewels, Goblin).
type ContractType struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Contract is a pact a Changeling can invoke.
type Contract struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Regalia        string `json:"regalia,omitempty"`
	ContractType   string `json:"contractType,omitempty"`
	Cost           string `json:"cost,omitempty"`
	Dice           string `json:"dice,omitempty"`
	Action         string `json:"action,omitempty"`
	Duration       string `json:"duration,omitempty"`
	Loophole       string `json:"loophole,omitempty"`
	SeemingBenefit string `json:"seemingBenefit,omitempty"`
}
