package gslides

// Pointer constructors for optional wire fields. Presence of an explicit
// zero (bold: false, startIndex: 0) is meaningful to the API, so optional
// scalars are pointers throughout the model.

func String(v string) *string { return &v }

func Bool(v bool) *bool { return &v }

func Int64(v int64) *int64 { return &v }

func Float64(v float64) *float64 { return &v }
