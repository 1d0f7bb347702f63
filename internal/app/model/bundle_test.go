package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestResolveComponent(t *testing.T) {
	variants := []Variant{
		{ID: 1, SKU: "TEE-S", Stock: 10, TrackStock: true},
		{ID: 2, SKU: "TEE-M", Stock: 4, TrackStock: true},
		{ID: 0, SKU: "TEE-L", Stock: 7, TrackStock: true}, // not yet persisted
	}

	tests := []struct {
		name    string
		item    BundleItem
		wantSKU string
		wantNil bool
	}{
		{
			name:    "Resolves by ID",
			item:    BundleItem{ComponentVariantID: uintPtr(2)},
			wantSKU: "TEE-M",
		},
		{
			name:    "ID wins over SKU",
			item:    BundleItem{ComponentVariantID: uintPtr(1), ComponentSKU: "TEE-M"},
			wantSKU: "TEE-S",
		},
		{
			name:    "Falls back to SKU when ID is unset",
			item:    BundleItem{ComponentSKU: "TEE-L"},
			wantSKU: "TEE-L",
		},
		{
			name:    "Zero ID treated as unset",
			item:    BundleItem{ComponentVariantID: uintPtr(0), ComponentSKU: "TEE-M"},
			wantSKU: "TEE-M",
		},
		{
			name:    "SKU match is case-sensitive",
			item:    BundleItem{ComponentSKU: "tee-m"},
			wantNil: true,
		},
		{
			name:    "Dangling ID yields nil",
			item:    BundleItem{ComponentVariantID: uintPtr(99)},
			wantNil: true,
		},
		{
			name:    "Neither key set yields nil",
			item:    BundleItem{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveComponent(tt.item, variants)

			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantSKU, got.SKU)
			}
		})
	}
}

func TestDerivedAvailableQty(t *testing.T) {
	components := []Variant{
		{ID: 1, SKU: "V1", Stock: 10, TrackStock: true},
		{ID: 2, SKU: "V2", Stock: 9, TrackStock: true},
		{ID: 3, SKU: "V3", Stock: 100, TrackStock: false},
		{ID: 4, SKU: "V4", Stock: 0, TrackStock: true},
	}

	tests := []struct {
		name    string
		items   []BundleItem
		want    *int
		wantNil bool
	}{
		{
			name: "Single component floor division",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(1), Quantity: 3},
			},
			want: intPtr(3), // floor(10/3)
		},
		{
			name: "Minimum across components",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(1), Quantity: 2}, // 5
				{ComponentVariantID: uintPtr(2), Quantity: 3}, // 3
			},
			want: intPtr(3),
		},
		{
			name: "Untracked component imposes no bound",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(1), Quantity: 2}, // 5
				{ComponentVariantID: uintPtr(3), Quantity: 1}, // skipped
			},
			want: intPtr(5),
		},
		{
			name: "All untracked yields unknown, not zero",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(3), Quantity: 1},
			},
			wantNil: true,
		},
		{
			name: "Unresolved items are excluded",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(99), Quantity: 1}, // dangling
				{ComponentVariantID: uintPtr(2), Quantity: 1},
			},
			want: intPtr(9),
		},
		{
			name: "All unresolved yields unknown",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(99), Quantity: 1},
				{ComponentSKU: "NOPE", Quantity: 2},
			},
			wantNil: true,
		},
		{
			name: "Zero stock forces zero",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(1), Quantity: 1},
				{ComponentVariantID: uintPtr(4), Quantity: 1},
			},
			want: intPtr(0),
		},
		{
			name: "Quantity below one clamps to one",
			items: []BundleItem{
				{ComponentVariantID: uintPtr(2), Quantity: 0},
			},
			want: intPtr(9),
		},
		{
			name:    "Empty bundle yields unknown",
			items:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := &Variant{ID: 50, SKU: "SET", IsBundle: true, BundleItems: tt.items}
			got := DerivedAvailableQty(bundle, components)

			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestDerivedAvailableQty_Scenarios(t *testing.T) {
	t.Run("Set A: untracked component imposes no limit", func(t *testing.T) {
		components := []Variant{
			{ID: 1, SKU: "V1", Stock: 6, TrackStock: true},
			{ID: 2, SKU: "V2", Stock: 5, TrackStock: false},
		}
		bundle := &Variant{IsBundle: true, BundleItems: []BundleItem{
			{ComponentVariantID: uintPtr(1), Quantity: 2},
			{ComponentVariantID: uintPtr(2), Quantity: 1},
		}}

		got := DerivedAvailableQty(bundle, components)
		require.NotNil(t, got)
		assert.Equal(t, 3, *got)
	})

	t.Run("Set B: sold-out component zeroes the bundle", func(t *testing.T) {
		components := []Variant{
			{ID: 3, SKU: "V3", Stock: 0, TrackStock: true},
		}
		bundle := &Variant{IsBundle: true, BundleItems: []BundleItem{
			{ComponentVariantID: uintPtr(3), Quantity: 1},
		}}

		got := DerivedAvailableQty(bundle, components)
		require.NotNil(t, got)
		assert.Equal(t, 0, *got)
	})
}

func intPtr(v int) *int {
	return &v
}
