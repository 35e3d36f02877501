package db

// timestampLayout is how instants are stored so SQLite's date functions can
// read them back.
const timestampLayout = "2006-01-02 15:04:05"
