package materializer

import (
	"fmt"
	"strings"
)

// TableName is the Athena table for one dataset and season, e.g. nwsl_defense_2025.
func TableName(dataset, season string) string {
	return fmt.Sprintf("nwsl_%s_%s", dataset, season)
}

// BuildDrop returns a DROP TABLE IF EXISTS for an external table.
func BuildDrop(db, table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`.`%s`", db, table)
}

// BuildExternalTable registers the CSV objects under location as a table.
// keys must be the snake_case column names in CSV column order; every column
// is a string because OpenCSVSerde does not type values.
func BuildExternalTable(db, table string, keys []string, location string) string {
	cols := make([]string, len(keys))
	for i, k := range keys {
		cols[i] = fmt.Sprintf("  `%s` string", k)
	}
	return fmt.Sprintf(`CREATE EXTERNAL TABLE IF NOT EXISTS `+"`%s`.`%s`"+` (
%s
)
ROW FORMAT SERDE 'org.apache.hadoop.hive.serde2.OpenCSVSerde'
WITH SERDEPROPERTIES ('separatorChar' = ',', 'quoteChar' = '"')
STORED AS TEXTFILE
LOCATION '%s'
TBLPROPERTIES ('skip.header.line.count' = '1')`, db, table, strings.Join(cols, ",\n"), location)
}

// BuildCount counts rows in db.table. DML quotes identifiers with double quotes.
func BuildCount(db, table string) string {
	return "SELECT COUNT(*) AS c FROM " + QualifiedName(db, table)
}

// QualifiedName is db.table quoted for SELECT statements.
func QualifiedName(db, table string) string {
	return fmt.Sprintf("%q.%q", db, table)
}
