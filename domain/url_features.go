package domain

const (
	HavingIPAddress        = "having_IP_Address"
	URLLength              = "URL_Length"
	HavingAtSymbol         = "having_At_Symbol"
	DoubleSlashRedirecting = "double_slash_redirecting"
	PrefixSuffix           = "Prefix_Suffix"
	HavingSubDomain        = "having_Sub_Domain"
)

// URLFeatureSet holds the six lexical URL features, each in {-1, 0, 1}.
// The zero value is the placeholder used for samples whose native family is text.
type URLFeatureSet struct {
	HavingIPAddress        int
	URLLength              int
	HavingAtSymbol         int
	DoubleSlashRedirecting int
	PrefixSuffix           int
	HavingSubDomain        int
}

// ByName exposes the features keyed by their column name.
// Column order is owned by the schema package, never by this map.
func (u URLFeatureSet) ByName() map[string]int {
	return map[string]int{
		HavingIPAddress:        u.HavingIPAddress,
		URLLength:              u.URLLength,
		HavingAtSymbol:         u.HavingAtSymbol,
		DoubleSlashRedirecting: u.DoubleSlashRedirecting,
		PrefixSuffix:           u.PrefixSuffix,
		HavingSubDomain:        u.HavingSubDomain,
	}
}

// URLFeatureSetFromNames is the inverse of ByName. Missing names stay at zero.
func URLFeatureSetFromNames(values map[string]int) URLFeatureSet {
	return URLFeatureSet{
		HavingIPAddress:        values[HavingIPAddress],
		URLLength:              values[URLLength],
		HavingAtSymbol:         values[HavingAtSymbol],
		DoubleSlashRedirecting: values[DoubleSlashRedirecting],
		PrefixSuffix:           values[PrefixSuffix],
		HavingSubDomain:        values[HavingSubDomain],
	}
}
