package model

// ResolveComponent finds the component variant a bundle item points at.
// A set, non-zero ComponentVariantID wins over the SKU; the SKU match is
// exact and case-sensitive. A nil result means a dangling reference (the
// component was deleted, or neither key is set). Callers decide whether
// that is fatal (submission validation) or just excluded (stock display).
func ResolveComponent(item BundleItem, variants []Variant) *Variant {
	if item.ComponentVariantID != nil && *item.ComponentVariantID != 0 {
		for i := range variants {
			if variants[i].ID == *item.ComponentVariantID {
				return &variants[i]
			}
		}
		return nil
	}
	if item.ComponentSKU != "" {
		for i := range variants {
			if variants[i].SKU == item.ComponentSKU {
				return &variants[i]
			}
		}
	}
	return nil
}

// DerivedAvailableQty computes how many complete bundles are sellable given
// the current stock of the bundle's components: the minimum over each tracked
// component of floor(stock / quantity). Unresolved items and components with
// TrackStock disabled impose no bound. A nil result means unbounded: a bundle
// made entirely of untracked components has no stock ceiling, which is
// deliberately distinct from zero.
func DerivedAvailableQty(bundle *Variant, components []Variant) *int {
	var limits []int
	for _, item := range bundle.BundleItems {
		component := ResolveComponent(item, components)
		if component == nil || !component.TrackStock {
			continue
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		stock := component.Stock
		if stock < 0 {
			stock = 0
		}
		limits = append(limits, stock/qty)
	}

	if len(limits) == 0 {
		return nil
	}

	min := limits[0]
	for _, limit := range limits[1:] {
		if limit < min {
			min = limit
		}
	}
	return &min
}
