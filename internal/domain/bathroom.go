package domain

import (
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// Bathroom Configurator Submission
// =============================================================================

// BathroomConfiguration is a bathroom configurator request. Almost every field
// is optional by business rule: a half-filled configurator is still a lead.
// All accessors are nil-safe and degrade to German fallback labels so that
// rendering never fails on missing data.
type BathroomConfiguration struct {
	ContactData    ContactData     `json:"contactData"`
	BathroomData   *BathroomData   `json:"bathroomData,omitempty"`
	Comments       string          `json:"comments,omitempty"`
	AdditionalInfo map[string]bool `json:"additionalInfo,omitempty"`
}

// ContactData is the configurator's customer block. Validation on these
// fields is advisory only (logged, never enforced).
type ContactData struct {
	Salutation string `json:"salutation,omitempty"`
	FirstName  string `json:"firstName" validate:"required,min=1"`
	LastName   string `json:"lastName" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone,omitempty"`
}

// BathroomData carries the configured bathroom. Numeric fields are pointers
// because the frontend may omit them or send null.
type BathroomData struct {
	BathroomSize *float64      `json:"bathroomSize,omitempty" validate:"omitempty,gte=0"`
	Equipment    []Equipment   `json:"equipment,omitempty"`
	QualityLevel *QualityLevel `json:"qualityLevel,omitempty"`
	FloorTiles   []string      `json:"floorTiles,omitempty"`
	WallTiles    []string      `json:"wallTiles,omitempty"`
	Heating      []string      `json:"heating,omitempty"`
}

// Equipment is one selectable equipment tile in the configurator.
type Equipment struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name,omitempty"`
	Category     string        `json:"category,omitempty"`
	Description  string        `json:"description,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	IconURL      string        `json:"iconUrl,omitempty"`
	Selected     bool          `json:"selected,omitempty"`
	PopupDetails *PopupDetails `json:"popupDetails,omitempty"`
}

// PopupDetails holds the sub-options shown in an equipment detail popup.
type PopupDetails struct {
	Options []EquipmentOption `json:"options,omitempty"`
}

// EquipmentOption is one variant of an equipment item (e.g. a specific model).
type EquipmentOption struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Selected    bool     `json:"selected,omitempty"`
}

// QualityLevel is the chosen quality tier.
type QualityLevel struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// SelectedEquipment is an equipment item resolved for rendering: the item
// name plus the name of its selected sub-option.
type SelectedEquipment struct {
	Name        string
	Option      string
	Description string
}

// additionalInfoLabels maps the configurator's info-request flags to labels.
var additionalInfoLabels = map[string]string{
	"projektablauf": "Projektablauf",
	"garantie":      "Garantie & Gewährleistung",
	"referenzen":    "Referenzen",
	"foerderung":    "Förderungsmöglichkeiten",
}

// CustomerName returns "Salutation FirstName LastName" with empty parts
// collapsed.
func (c BathroomConfiguration) CustomerName() string {
	parts := []string{c.ContactData.Salutation, c.ContactData.FirstName, c.ContactData.LastName}
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// SelectedEquipment resolves all selected equipment items. For each item the
// selected popup option determines the variant; without one the variant
// degrades to "Standard".
func (c BathroomConfiguration) SelectedEquipment() []SelectedEquipment {
	if c.BathroomData == nil {
		return nil
	}
	var out []SelectedEquipment
	for _, item := range c.BathroomData.Equipment {
		if !item.Selected {
			continue
		}
		resolved := SelectedEquipment{Name: item.Name, Option: "Standard"}
		if item.PopupDetails != nil {
			for _, opt := range item.PopupDetails.Options {
				if opt.Selected {
					resolved.Option = opt.Name
					resolved.Description = opt.Description
					break
				}
			}
		}
		out = append(out, resolved)
	}
	return out
}

// SizeLabel returns the bathroom size or "Nicht angegeben" when absent.
func (c BathroomConfiguration) SizeLabel() string {
	if c.BathroomData == nil || c.BathroomData.BathroomSize == nil {
		return "Nicht angegeben"
	}
	return trimFloat(*c.BathroomData.BathroomSize)
}

// QualityName returns the quality level name or "Nicht ausgewählt".
func (c BathroomConfiguration) QualityName() string {
	if c.BathroomData == nil || c.BathroomData.QualityLevel == nil || c.BathroomData.QualityLevel.Name == "" {
		return "Nicht ausgewählt"
	}
	return c.BathroomData.QualityLevel.Name
}

// QualityDescription returns the quality level description, if any.
func (c BathroomConfiguration) QualityDescription() string {
	if c.BathroomData == nil || c.BathroomData.QualityLevel == nil {
		return ""
	}
	return c.BathroomData.QualityLevel.Description
}

// FloorTiles returns the configured floor tiles, nil-safe.
func (c BathroomConfiguration) FloorTiles() []string {
	if c.BathroomData == nil {
		return nil
	}
	return c.BathroomData.FloorTiles
}

// WallTiles returns the configured wall tiles, nil-safe.
func (c BathroomConfiguration) WallTiles() []string {
	if c.BathroomData == nil {
		return nil
	}
	return c.BathroomData.WallTiles
}

// Heating returns the configured heating options, nil-safe.
func (c BathroomConfiguration) Heating() []string {
	if c.BathroomData == nil {
		return nil
	}
	return c.BathroomData.Heating
}

// AdditionalInfoLabels returns display labels for every requested info flag.
// Known keys map through the label table; unknown keys pass through verbatim.
func (c BathroomConfiguration) AdditionalInfoLabels() []string {
	if len(c.AdditionalInfo) == 0 {
		return nil
	}
	// Stable ordering: known labels first in table order, then unknown keys.
	order := []string{"projektablauf", "garantie", "referenzen", "foerderung"}
	var out []string
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if c.AdditionalInfo[key] {
			out = append(out, additionalInfoLabels[key])
		}
		seen[key] = true
	}
	var extra []string
	for key, requested := range c.AdditionalInfo {
		if requested && !seen[key] {
			extra = append(extra, key)
		}
	}
	// Map iteration order is random; sort extras for deterministic rendering.
	if len(extra) > 1 {
		sort.Strings(extra)
	}
	return append(out, extra...)
}

// JoinList joins non-empty entries with ", " and degrades to
// "Keine ausgewählt" when nothing remains.
func JoinList(items []string) string {
	var filtered []string
	for _, item := range items {
		if item != "" {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return "Keine ausgewählt"
	}
	return strings.Join(filtered, ", ")
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
