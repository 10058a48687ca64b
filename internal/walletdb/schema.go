package walletdb

// schemaSQL creates the six tables of spec.md §3/§6, each idempotently
// (CREATE TABLE IF NOT EXISTS), with the column order, names, and
// uniqueness constraints spec.md §6 requires.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS hdroot (
	id INTEGER PRIMARY KEY NOT NULL,
	timestamp INTEGER NOT NULL,
	version INTEGER NOT NULL,
	secret BLOB NOT NULL,
	UNIQUE(version, secret)
);

CREATE TABLE IF NOT EXISTS hdchain (
	id INTEGER PRIMARY KEY NOT NULL,
	hdroot_id INTEGER NOT NULL REFERENCES hdroot(id),
	chaincode INTEGER NOT NULL,
	mine BOOLEAN NOT NULL,
	sweep BOOLEAN NOT NULL,
	mindepth INTEGER NOT NULL,
	maxdepth INTEGER NOT NULL,
	UNIQUE(hdroot_id, chaincode, mine, sweep)
);

CREATE TABLE IF NOT EXISTS secret (
	id INTEGER PRIMARY KEY NOT NULL,
	timestamp INTEGER NOT NULL,
	secret TEXT NOT NULL UNIQUE,
	mine BOOLEAN NOT NULL,
	sweep BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS hdkey (
	id INTEGER PRIMARY KEY NOT NULL,
	hdchain_id INTEGER NOT NULL REFERENCES hdchain(id),
	depth INTEGER NOT NULL,
	secret_id INTEGER NOT NULL UNIQUE REFERENCES secret(id),
	UNIQUE(hdchain_id, depth)
);

CREATE TABLE IF NOT EXISTS output (
	id INTEGER PRIMARY KEY NOT NULL,
	timestamp INTEGER NOT NULL,
	hash BLOB NOT NULL,
	secret_id INTEGER REFERENCES secret(id),
	amount INTEGER NOT NULL,
	spent BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS terms (
	id INTEGER PRIMARY KEY NOT NULL,
	body TEXT UNIQUE NOT NULL,
	timestamp INTEGER NOT NULL
);
`
