package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestSelectedEquipment(t *testing.T) {
	tests := []struct {
		name string
		cfg  BathroomConfiguration
		want []SelectedEquipment
	}{
		{
			name: "no bathroom data",
			cfg:  BathroomConfiguration{},
			want: nil,
		},
		{
			name: "unselected items are skipped",
			cfg: BathroomConfiguration{
				BathroomData: &BathroomData{
					Equipment: []Equipment{
						{Name: "Dusche", Selected: false},
						{Name: "Badewanne", Selected: true},
					},
				},
			},
			want: []SelectedEquipment{{Name: "Badewanne", Option: "Standard"}},
		},
		{
			name: "selected popup option wins",
			cfg: BathroomConfiguration{
				BathroomData: &BathroomData{
					Equipment: []Equipment{
						{
							Name:     "Dusche",
							Selected: true,
							PopupDetails: &PopupDetails{
								Options: []EquipmentOption{
									{Name: "Basis", Selected: false},
									{Name: "Regendusche", Description: "Deckenbrause", Selected: true},
								},
							},
						},
					},
				},
			},
			want: []SelectedEquipment{{Name: "Dusche", Option: "Regendusche", Description: "Deckenbrause"}},
		},
		{
			name: "popup without selected option degrades to Standard",
			cfg: BathroomConfiguration{
				BathroomData: &BathroomData{
					Equipment: []Equipment{
						{
							Name:         "WC",
							Selected:     true,
							PopupDetails: &PopupDetails{Options: []EquipmentOption{{Name: "Spülrandlos"}}},
						},
					},
				},
			},
			want: []SelectedEquipment{{Name: "WC", Option: "Standard"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.SelectedEquipment())
		})
	}
}

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		name string
		cfg  BathroomConfiguration
		want string
	}{
		{"nil data", BathroomConfiguration{}, "Nicht angegeben"},
		{"nil size", BathroomConfiguration{BathroomData: &BathroomData{}}, "Nicht angegeben"},
		{"integer size", BathroomConfiguration{BathroomData: &BathroomData{BathroomSize: floatPtr(8)}}, "8"},
		{"fractional size", BathroomConfiguration{BathroomData: &BathroomData{BathroomSize: floatPtr(7.5)}}, "7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.SizeLabel())
		})
	}
}

func TestQualityName(t *testing.T) {
	assert.Equal(t, "Nicht ausgewählt", BathroomConfiguration{}.QualityName())
	assert.Equal(t, "Nicht ausgewählt", BathroomConfiguration{
		BathroomData: &BathroomData{QualityLevel: &QualityLevel{}},
	}.QualityName())
	assert.Equal(t, "Premium", BathroomConfiguration{
		BathroomData: &BathroomData{QualityLevel: &QualityLevel{Name: "Premium"}},
	}.QualityName())
}

func TestCustomerName(t *testing.T) {
	cfg := BathroomConfiguration{
		ContactData: ContactData{Salutation: "Herr", FirstName: "Max", LastName: "Mustermann"},
	}
	assert.Equal(t, "Herr Max Mustermann", cfg.CustomerName())

	cfg.ContactData.Salutation = ""
	assert.Equal(t, "Max Mustermann", cfg.CustomerName())
}

func TestAdditionalInfoLabels(t *testing.T) {
	cfg := BathroomConfiguration{
		AdditionalInfo: map[string]bool{
			"garantie":      true,
			"projektablauf": true,
			"referenzen":    false,
			"sonderwunsch":  true,
			"aufmass":       true,
		},
	}
	// Known labels in table order, unknown keys sorted at the end.
	assert.Equal(t,
		[]string{"Projektablauf", "Garantie & Gewährleistung", "aufmass", "sonderwunsch"},
		cfg.AdditionalInfoLabels(),
	)

	assert.Nil(t, BathroomConfiguration{}.AdditionalInfoLabels())
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "Keine ausgewählt", JoinList(nil))
	assert.Equal(t, "Keine ausgewählt", JoinList([]string{"", ""}))
	assert.Equal(t, "Feinsteinzeug, Mosaik", JoinList([]string{"Feinsteinzeug", "", "Mosaik"}))
}
