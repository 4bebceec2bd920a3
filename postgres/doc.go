/*
Package postgres keeps the storefront's records in PostgreSQL through gorm.

Connect selects nothing on its own; NewConfig picks the database for the environment,
and Connect opens it and runs every Migration not yet recorded in the migrations table.

Store is the only way the rest of the application touches the database.
Errors leaving a Store wrap the root package's sentinels,
so callers test for meadowlark.ErrNotExist rather than gorm.ErrRecordNotFound.
*/
package postgres
