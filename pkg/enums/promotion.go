package enums

import "fmt"

type PromotionType string

const (
	PromotionSlider PromotionType = "slider"
	PromotionBanner PromotionType = "banner"
)

func (t PromotionType) IsValid() bool {
	return t == PromotionSlider || t == PromotionBanner
}

func ParsePromotionType(value string) (PromotionType, error) {
	typ := PromotionType(value)
	if !typ.IsValid() {
		return "", fmt.Errorf("invalid promotion type %q", value)
	}
	return typ, nil
}

func (t PromotionType) String() string {
	return string(t)
}
