// Package timezones lists the IANA zones the clock can display, searches
// them, and serves the matches as JSON options for the clock page's zone
// picker. Each option carries the zone's current UTC offset and time.
//
// The backing list is embedded under data/zones.txt and every entry is
// checked against the embedded tz database when loaded.
package timezones
