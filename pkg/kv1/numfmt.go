package kv1

import "strconv"

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(n float64) string { return strconv.FormatFloat(n, 'g', -1, 64) }
