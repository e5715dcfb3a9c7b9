package grasp

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Profile is a declarative preset for interaction behavior, loaded from
// YAML. Applying a profile configures an interactor's trigger policy and
// target handling, or an interactable's selection, focus, and strength
// settings. Fields left empty in the YAML keep the entity's current value.
type Profile struct {
	Name                    string  `yaml:"name"`
	Trigger                 string  `yaml:"trigger"`         // state | state_change | toggle | sticky
	SelectMode              string  `yaml:"select_mode"`     // single | multiple
	FocusMode               string  `yaml:"focus_mode"`      // none | single
	TargetPriority          string  `yaml:"target_priority"` // all | highest | none
	KeepSelectedTargetValid *bool   `yaml:"keep_selected_target_valid"`
	StrengthSmoothing       float64 `yaml:"strength_smoothing"`
}

// ProfileSet is a named collection of profiles loaded from one document.
type ProfileSet struct {
	profiles map[string]*Profile
}

type profileDoc struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles parses a YAML profile document:
//
//	profiles:
//	  - name: pinch
//	    trigger: state_change
//	    target_priority: highest
//	  - name: grabbable
//	    select_mode: single
//	    focus_mode: single
//	    strength_smoothing: 0.15
//
// Profiles without a name, or with a duplicated name, are rejected.
func LoadProfiles(data []byte) (*ProfileSet, error) {
	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("parse profiles: no profiles")
	}
	set := &ProfileSet{profiles: make(map[string]*Profile, len(doc.Profiles))}
	for _, p := range doc.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("parse profiles: profile without name")
		}
		if _, dup := set.profiles[p.Name]; dup {
			return nil, fmt.Errorf("parse profiles: duplicate profile %q", p.Name)
		}
		set.profiles[p.Name] = p
	}
	return set, nil
}

// Get returns the profile with the given name, or nil.
func (s *ProfileSet) Get(name string) *Profile {
	return s.profiles[name]
}

// ApplyToInteractor applies the named profile's interactor-side fields.
func (s *ProfileSet) ApplyToInteractor(name string, in *Interactor) error {
	p := s.profiles[name]
	if p == nil {
		return fmt.Errorf("apply profile: unknown profile %q", name)
	}
	if p.Trigger != "" {
		mode, err := parseTrigger(p.Trigger)
		if err != nil {
			return fmt.Errorf("apply profile %q: %w", name, err)
		}
		in.selectInput.SetMode(mode)
	}
	if p.TargetPriority != "" {
		mode, err := parseTargetPriority(p.TargetPriority)
		if err != nil {
			return fmt.Errorf("apply profile %q: %w", name, err)
		}
		in.TargetPriorityMode = mode
	}
	if p.KeepSelectedTargetValid != nil {
		in.KeepSelectedTargetValid = *p.KeepSelectedTargetValid
	}
	return nil
}

// ApplyToInteractable applies the named profile's interactable-side fields.
func (s *ProfileSet) ApplyToInteractable(name string, x *Interactable) error {
	p := s.profiles[name]
	if p == nil {
		return fmt.Errorf("apply profile: unknown profile %q", name)
	}
	if p.SelectMode != "" {
		mode, err := parseSelectMode(p.SelectMode)
		if err != nil {
			return fmt.Errorf("apply profile %q: %w", name, err)
		}
		x.SelectMode = mode
	}
	if p.FocusMode != "" {
		mode, err := parseFocusMode(p.FocusMode)
		if err != nil {
			return fmt.Errorf("apply profile %q: %w", name, err)
		}
		x.FocusMode = mode
	}
	if p.StrengthSmoothing > 0 {
		x.StrengthSmoothing = p.StrengthSmoothing
	}
	return nil
}

func parseTrigger(s string) (InputTriggerType, error) {
	switch s {
	case "state":
		return TriggerState, nil
	case "state_change":
		return TriggerStateChange, nil
	case "toggle":
		return TriggerToggle, nil
	case "sticky":
		return TriggerSticky, nil
	}
	return 0, fmt.Errorf("unknown trigger %q", s)
}

func parseSelectMode(s string) (SelectMode, error) {
	switch s {
	case "single":
		return SelectModeSingle, nil
	case "multiple":
		return SelectModeMultiple, nil
	}
	return 0, fmt.Errorf("unknown select_mode %q", s)
}

func parseFocusMode(s string) (FocusMode, error) {
	switch s {
	case "none":
		return FocusModeNone, nil
	case "single":
		return FocusModeSingle, nil
	}
	return 0, fmt.Errorf("unknown focus_mode %q", s)
}

func parseTargetPriority(s string) (TargetPriorityMode, error) {
	switch s {
	case "all":
		return TargetPriorityAll, nil
	case "highest":
		return TargetPriorityHighestOnly, nil
	case "none":
		return TargetPriorityNone, nil
	}
	return 0, fmt.Errorf("unknown target_priority %q", s)
}
