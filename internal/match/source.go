package match

// Source identifies which specimen name variant a query came from. It only
// shapes the explanation label on a result, never the scoring.
type Source string

const (
	SourceOrg   Source = "ORG"
	SourceConf  Source = "CONF"
	SourceForay Source = "FORAY"
)

// Field identifies which reference column produced a winning score.
type Field string

const (
	FieldTaxon   Field = "TAXON"
	FieldUpdated Field = "UPDATED"
)

// explanation renders the label stored alongside a chosen candidate, for
// example "FORAY → UPDATED".
func explanation(source Source, field Field) string {
	return string(source) + " → " + string(field)
}
