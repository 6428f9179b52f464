package profile

// Catalog lists the gacha items available per slot.
var Catalog = map[Slot][]string{
	SlotHat:     {"cap", "crown", "tophat", "helmet", "beret", "partyhat", "headphone", "flower", "viking"},
	SlotWeapon:  {"sword", "wand", "lollipop", "hammer", "bow", "shield", "mic", "carrot", "laser"},
	SlotClothes: {"overalls", "suit", "dress", "hoodie", "tuxedo", "raincoat", "armor", "jersey", "hanbok"},
	SlotShoes:   {"boots", "sneakers", "slippers", "heels", "sandals", "skates", "flippers", "socks", "rocket"},
}

// Skins are the body colors a runner can wear.
var Skins = []string{"white", "cocoa", "peach", "rose", "lilac", "periwinkle", "aqua", "mint", "lime", "coral"}

// CandySkins is the number of candy looks; one unlocks per candy level.
const CandySkins = 20

// CatalogSize returns the total number of collectible items.
func CatalogSize() int {
	n := 0
	for _, s := range Slots {
		n += len(Catalog[s])
	}
	return n
}

// InCatalog reports whether item exists for the slot.
func InCatalog(s Slot, item string) bool {
	for _, it := range Catalog[s] {
		if it == item {
			return true
		}
	}
	return false
}

type slotItem struct {
	slot Slot
	item string
}

// missing returns every catalog item not yet owned, in catalog order.
func missing(inv *Inventory) []slotItem {
	var out []slotItem
	for _, s := range Slots {
		for _, it := range Catalog[s] {
			if !inv.Has(s, it) {
				out = append(out, slotItem{s, it})
			}
		}
	}
	return out
}
