package domain

// Environment is the initial world a simulation runs on.
type Environment struct {
	Slaughterhouse *Slaughterhouse
	Farms          []*Farm
}

// FarmByID returns nil when no farm has the id.
func (e *Environment) FarmByID(id string) *Farm {
	for _, f := range e.Farms {
		if f.ID == id {
			return f
		}
	}
	return nil
}
