// Package filter selects catalog movies with expr-lang expressions.
//
// Expressions see the movie as variables (Title, Year, VoteAverage, VoteCount,
// Popularity, Released, GenreIDs, Language, Adult, Favorite, InLibrary,
// Requested, ...) and a set of helpers:
//
//	VoteAverage >= 7.5 and Year >= 2020
//	hasGenre("Horror") and not InLibrary
//	contains(Title, "star") or Released > monthsAgo(6)
//
// Named presets wrap common expressions; see DefaultPresets.
package filter
