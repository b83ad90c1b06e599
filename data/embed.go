// Package data carries the embedded initdb DDL used when standing up the
// local mariadb container.
package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/002-ddl-tables.sql
var MariaDBTablesSQL string

//go:embed initdb/mariadb/003-ddl-privileges.sql
var MariaDBPrivilegesSQL string
