// Package dataset loads storyline event files.
//
// # Overview
//
// An event file is a flat list of records. Each record is a set of named
// fields; the names of the time, entity and group fields are configurable
// through [Fields]:
//
//	[
//	  {"name": "Martha", "date": "1920", "place": "Station"},
//	  {"name": "Jonas",  "date": "1920", "place": "Station"},
//	  {"name": "Martha", "date": "1986", "place": "Caves"}
//	]
//
// # Formats
//
// [ReadFile] picks the decoder from the file extension:
//
//   - .json: an array of objects, or an object with an "events" array
//   - .yaml, .yml: the same shapes in YAML
//   - .csv: a header row naming the fields, one record per line
//
// # Time Values
//
// Times may be numbers, numeric strings, or dates. With [Fields.TimeLayout]
// set, strings are parsed with that layout and converted to fractional
// years, so 1986-07-02 becomes about 1986.5. Records whose time cannot be
// read are kept and reported as excluded by the layout builder.
//
// # Filtering
//
// [Filter] keeps records of selected entities and times, mirroring the
// character and date pickers of an interactive viewer.
package dataset
