// Package input turns raw console text into validated records.
//
// Nothing invalid reaches the collection: names and categories are trimmed
// and NFC-normalized so that byte-wise comparison treats visually identical
// text the same way, then every record is checked against a CUE schema:
//
//	#Record: {
//	    name:     strings.MinRunes(1) & strings.MaxRunes(29)
//	    category: strings.MinRunes(1) & strings.MaxRunes(19)
//	    priority: int & >=1 & <=10
//	}
//
// All validation failures wrap ErrInvalidInput. The interactive menus
// re-prompt on them; they are never surfaced as collection errors.
package input
