// Package cli implements the nwsl-stats command line.
//
// Subcommands scrape one or both stat categories (defense, players, all),
// list the teams present in a written CSV (teams), join the written CSVs into
// per-player lines (roster, compare), and read stored rows back from DynamoDB
// (show). Flags default to the environment read by
// internal/config, so the same settings work for the CLI and the Lambda.
package cli
