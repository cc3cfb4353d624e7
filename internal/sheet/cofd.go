package sheet

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/ocsm/internal/game/cofd"
	"github.com/cory-johannsen/ocsm/internal/metadata"
)

// Chronicles of Darkness fields.
const (
	FieldConcept    = "concept"
	FieldChronicle  = "chronicle"
	FieldAttribute  = "attribute"
	FieldSize       = "size"
	FieldMerit      = "merit"
	FieldHealth     = "health"
	FieldWillpower  = "willpower"
	FieldBeats      = "beats"
	FieldExperience = "experience"
	FieldSpecialty  = "specialty"
	FieldAspiration = "aspiration"

	FieldIntegrity = "integrity"
	FieldFaction   = "faction"
	FieldGroup     = "group"
	FieldVice      = "vice"
	FieldVirtue    = "virtue"

	FieldSeeming = "seeming"
	FieldKith    = "kith"
	FieldCourt   = "court"
	FieldNeedle  = "needle"
	FieldThread  = "thread"
	FieldClarity = "clarity"
	FieldGlamour = "glamour"
	FieldWyrd    = "wyrd"
)

// errNotHandled lets a system-specific handler fall through to the shared core fields.
var errNotHandled = fmt.Errorf("%w", ErrUnknownField)

// applyCore handles the fields every Chronicles of Darkness character shares.
// resync resizes the owner's derived trackers after a rating changes.
func applyCore(c *cofd.Core, ch Character, cat Catalog, e Edit, resync func()) error {
	switch e.Field {
	case FieldName:
		c.Name = e.Value
	case FieldPlayer:
		c.Player = e.Value
	case FieldConcept:
		c.Concept = e.Value
	case FieldChronicle:
		c.Chronicle = e.Value

	case FieldAttribute:
		a, err := cofd.ParseAttribute(e.Key)
		if err != nil {
			return invalid(e, "%v", err)
		}
		dots, err := intValue(e)
		if err != nil {
			return err
		}
		if err := c.SetAttribute(a, dots); err != nil {
			return invalid(e, "%v", err)
		}
	case FieldSkill:
		s, err := cofd.ParseSkill(e.Key)
		if err != nil {
			return invalid(e, "%v", err)
		}
		dots, err := intValue(e)
		if err != nil {
			return err
		}
		if err := c.SetSkill(s, dots); err != nil {
			return invalid(e, "%v", err)
		}
	case FieldSize:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		c.SetSize(n)

	case FieldMerit:
		if err := requireKey(e); err != nil {
			return err
		}
		dots, err := intValue(e)
		if err != nil {
			return err
		}
		m := cofd.Merit{Name: e.Key}
		if dots > 0 {
			if m, err = lookup[cofd.Merit](cat, ch, metadata.Merits, e.Key); err != nil {
				return err
			}
		}
		if err := c.SetMerit(m, dots); err != nil {
			return invalid(e, "%v", err)
		}

	case FieldHealth:
		state, err := parseDamage(e)
		if err != nil {
			return err
		}
		switch strings.ToLower(e.Value) {
		case "add", "+":
			if !c.Health.Add(state) {
				return invalid(e, "health track is full")
			}
		case "remove", "-":
			if !c.Health.Remove(state) {
				return invalid(e, "no %s damage to heal", state)
			}
		default:
			return invalid(e, "expected add or remove")
		}
	case FieldWillpower:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		c.Willpower.SetMarked(n)
	case FieldBeats:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		c.Beats.SetMarked(n)
	case FieldExperience:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		if n < 0 {
			return invalid(e, "experience must be >= 0")
		}
		c.Experience = n
	case FieldSpecialty:
		c.Specialties = toggle(c.Specialties, e.Value)
	case FieldAspiration:
		c.Aspirations = toggle(c.Aspirations, e.Value)

	default:
		return errNotHandled
	}
	resync()
	return nil
}

func parseDamage(e Edit) (cofd.TrackerState, error) {
	switch strings.ToLower(e.Key) {
	case "bashing":
		return cofd.Bashing, nil
	case "lethal":
		return cofd.Lethal, nil
	case "aggravated":
		return cofd.Aggravated, nil
	}
	return 0, invalid(e, "damage must be bashing, lethal or aggravated")
}

// toggle adds v to list, or removes it when already present. Empty values are ignored.
func toggle(list []string, v string) []string {
	if v == "" {
		return list
	}
	for i, x := range list {
		if x == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}

func applyMortal(m *cofd.Mortal, cat Catalog, e Edit) error {
	switch e.Field {
	case FieldIntegrity:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		if err := m.SetIntegrity(n); err != nil {
			return invalid(e, "%v", err)
		}
	case FieldFaction:
		m.Faction = e.Value
	case FieldGroup:
		m.GroupName = e.Value
	case FieldVice:
		m.Vice = e.Value
	case FieldVirtue:
		m.Virtue = e.Value
	default:
		return coreOrUnknown(applyCore(&m.Core, m, cat, e, m.SyncTrackers), e)
	}
	return nil
}

func applyChangeling(c *cofd.Changeling, cat Catalog, e Edit) error {
	switch e.Field {
	case FieldSeeming:
		if e.Value == "" {
			c.AttachSeeming(nil)
			return nil
		}
		s, err := lookup[cofd.Seeming](cat, c, metadata.Seemings, e.Value)
		if err != nil {
			return err
		}
		c.AttachSeeming(&s)
	case FieldKith:
		if e.Value == "" {
			c.AttachKith(nil)
			return nil
		}
		k, err := lookup[cofd.Kith](cat, c, metadata.Kiths, e.Value)
		if err != nil {
			return err
		}
		c.AttachKith(&k)
	case FieldCourt:
		if e.Value == "" {
			c.AttachCourt(nil)
			return nil
		}
		ct, err := lookup[cofd.Court](cat, c, metadata.Courts, e.Value)
		if err != nil {
			return err
		}
		c.AttachCourt(&ct)
	case FieldNeedle:
		c.Needle = e.Value
	case FieldThread:
		c.Thread = e.Value
	case FieldClarity, FieldGlamour:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		if e.Field == FieldClarity {
			c.Clarity.SetMarked(n)
		} else {
			c.Glamour.SetMarked(n)
		}
	case FieldWyrd:
		n, err := intValue(e)
		if err != nil {
			return err
		}
		if err := c.SetWyrd(n); err != nil {
			return invalid(e, "%v", err)
		}
	default:
		return coreOrUnknown(applyCore(&c.Core, c, cat, e, c.SyncTrackers), e)
	}
	return nil
}

func coreOrUnknown(err error, e Edit) error {
	if err == errNotHandled {
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return err
}
