// Package types defines the board vocabulary shared by the Dymaxion puzzle
// packages: slots, shape categories, pieces, menu intents, completed-game
// records, configuration, and the standard error values.
package types
