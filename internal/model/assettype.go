package model

import "fmt"

// AssetType classifies accounts and positions for allocation purposes.
type AssetType string

const (
	AssetCash       AssetType = "Cash"
	AssetStock      AssetType = "Stock"
	AssetETF        AssetType = "ETF"
	AssetBond       AssetType = "Bond"
	AssetCrypto     AssetType = "Crypto"
	AssetRealEstate AssetType = "Real Estate"
	AssetOther      AssetType = "Other"
)

// AssetTypes returns the full set in canonical enumeration order. Allocation
// and drift outputs iterate in this order, which is also the tie-break order
// for equal drift magnitudes.
func AssetTypes() []AssetType {
	return []AssetType{
		AssetCash,
		AssetStock,
		AssetETF,
		AssetBond,
		AssetCrypto,
		AssetRealEstate,
		AssetOther,
	}
}

// ParseAssetType validates an asset type name.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(s) {
	case AssetCash, AssetStock, AssetETF, AssetBond, AssetCrypto, AssetRealEstate, AssetOther:
		return AssetType(s), nil
	default:
		return "", fmt.Errorf("unknown asset type: %q", s)
	}
}

// UnmarshalText rejects asset types outside the closed set. Declared on
// text rather than JSON so map keys (the targets allocation) validate too;
// encoding/json decodes string map keys through TextUnmarshaler only.
func (a *AssetType) UnmarshalText(text []byte) error {
	t, err := ParseAssetType(string(text))
	if err != nil {
		return err
	}
	*a = t
	return nil
}
