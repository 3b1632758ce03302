package domain

// GearCategory groups checklist items, e.g. "Sleep system".
type GearCategory struct {
	ID    string     `json:"id" bson:"id" yaml:"id"`
	Name  string     `json:"name" bson:"name" yaml:"name"`
	Items []GearItem `json:"items" bson:"items" yaml:"items"`
}

// GearItem is a single checkable piece of gear.
type GearItem struct {
	ID      string `json:"id" bson:"id" yaml:"id"`
	Name    string `json:"name" bson:"name" yaml:"name"`
	Checked bool   `json:"checked" bson:"checked" yaml:"checked"`
}

// GearTemplate is a predefined bundle of categories importable into a checklist.
type GearTemplate struct {
	Key        string         `json:"key" yaml:"key"`
	Label      string         `json:"label" yaml:"label"`
	Categories []GearCategory `json:"categories" yaml:"categories"`
}
