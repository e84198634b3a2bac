// Package io provides JSON export and import for resolution graphs.
//
// # JSON Format
//
//	{
//	  "atom": "signal",
//	  "order": ["optim-1.0.6", "signal-1.0.11"],
//	  "nodes": [
//	    {"id": "signal-1.0.11", "meta": {"name": "signal", "version": "1.0.11"}},
//	    {"id": "optim-1.0.6", "row": 1, "meta": {"name": "optim", "version": "1.0.6"}}
//	  ],
//	  "edges": [
//	    {"from": "signal-1.0.11", "to": "optim-1.0.6", "constraint": "optim (>= 1.0.0)"}
//	  ]
//	}
//
// "order" lists the nodes dependencies first, which is the order the
// packages have to be emerged in. It is informational and ignored by
// [ReadJSON].
package io
