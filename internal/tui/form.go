package tui

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/meur/cs2hub/internal/models"
)

// Dialog fields in display order.
const (
	fieldName = iota
	fieldWeapon
	fieldRarity
	fieldWear
	fieldPrice
	fieldImageURL
	fieldFloat
	fieldOwner
	fieldStickers
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Weapon", "Rarity", "Wear", "Price", "Image URL", "Float", "Owner", "Stickers",
}

// form is the editable rendering of a SkinDraft. Text fields are rune
// buffers edited at the end; rarity is a choice cycled through the
// closed enumeration, so the user can never type an unknown tier.
type form struct {
	values [fieldCount][]rune
	rarity models.Rarity
	focus  int
}

func newForm(draft models.SkinDraft) form {
	var f form
	f.values[fieldName] = []rune(draft.Name)
	f.values[fieldWeapon] = []rune(draft.Weapon)
	f.values[fieldWear] = []rune(draft.Wear)
	f.values[fieldImageURL] = []rune(draft.ImageURL)
	f.values[fieldOwner] = []rune(draft.OwnerName)
	f.values[fieldStickers] = []rune(strings.Join(draft.Stickers, ", "))
	if draft.Price != 0 {
		f.values[fieldPrice] = []rune(strconv.FormatInt(draft.Price, 10))
	}
	if draft.FloatValue != 0 {
		f.values[fieldFloat] = []rune(strconv.FormatFloat(draft.FloatValue, 'f', -1, 64))
	}
	f.rarity = draft.Rarity
	return f
}

// draft parses the form back into a SkinDraft. Only the numeric fields
// can fail here; everything else is checked by draft validation.
func (f form) draft() (models.SkinDraft, error) {
	draft := models.SkinDraft{
		Name:      strings.TrimSpace(string(f.values[fieldName])),
		Weapon:    strings.TrimSpace(string(f.values[fieldWeapon])),
		Rarity:    f.rarity,
		Wear:      strings.TrimSpace(string(f.values[fieldWear])),
		ImageURL:  strings.TrimSpace(string(f.values[fieldImageURL])),
		OwnerName: strings.TrimSpace(string(f.values[fieldOwner])),
	}

	if raw := strings.TrimSpace(string(f.values[fieldPrice])); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return draft, errors.Errorf("price must be a whole number, got %q", raw)
		}
		draft.Price = price
	}
	if raw := strings.TrimSpace(string(f.values[fieldFloat])); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return draft, errors.Errorf("float must be a number, got %q", raw)
		}
		draft.FloatValue = value
	}
	for _, sticker := range strings.Split(string(f.values[fieldStickers]), ",") {
		if sticker = strings.TrimSpace(sticker); sticker != "" {
			draft.Stickers = append(draft.Stickers, sticker)
		}
	}
	return draft, nil
}

func (f *form) next() {
	f.focus = (f.focus + 1) % fieldCount
}

func (f *form) prev() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
}

func (f *form) onChoice() bool {
	return f.focus == fieldRarity
}

func (f *form) cycle() {
	f.rarity = f.rarity.Next()
}

func (f *form) insert(runes []rune) {
	if f.onChoice() {
		return
	}
	f.values[f.focus] = append(f.values[f.focus], runes...)
}

func (f *form) backspace() {
	if f.onChoice() || len(f.values[f.focus]) == 0 {
		return
	}
	f.values[f.focus] = f.values[f.focus][:len(f.values[f.focus])-1]
}

// value returns the display text of field i.
func (f form) value(i int) string {
	if i == fieldRarity {
		if f.rarity == "" {
			return "(none)"
		}
		return f.rarity.String()
	}
	return string(f.values[i])
}
