// Package age turns birth dates into whole-year ages.
//
// The arithmetic is anniversary based: the difference in calendar years,
// minus one when the reference day falls before the birthday in its year.
// A birth date in the future therefore yields a negative age.
package age
