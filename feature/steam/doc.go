// Package steam is a client for the part of the Steam Web API the optimiser
// needs: IPlayerService/GetOwnedGames, called with include_appinfo so every
// game comes back with its name and total playtime in minutes.
//
// The response is authoritative for the set of games in a run. A body without
// a games list (bad key, private profile) is reported as ErrInvalidResponse.
package steam
