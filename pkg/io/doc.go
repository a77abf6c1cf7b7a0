// Package io provides JSON import and export for recorded drag gestures.
//
// # Overview
//
// A [Trace] is one pointer session against a sheet: the container it was
// performed in, the sheet's content height, and every vertical move with
// its time since the pointer went down. The demo records traces and the
// simulate command replays them against a fresh coordinator, so a drag
// that behaved oddly on screen can be reproduced exactly.
//
// # JSON Format
//
//	{
//	  "container": {"width": 400, "height": 800},
//	  "content": 200,
//	  "moves": [
//	    {"at_ms": 16, "dy": 12},
//	    {"at_ms": 32, "dy": 14.5}
//	  ],
//	  "release_ms": 40
//	}
//
// Times are milliseconds since the pointer went down and must not
// decrease. dy is in points, positive downward. release_ms defaults to the
// time of the last move.
//
// # Usage
//
//	t, err := io.ImportJSON("flick.json")
//	if err != nil {
//	    return err
//	}
//	for _, m := range t.Moves {
//	    fmt.Println(m.At(), m.DY)
//	}
package io
