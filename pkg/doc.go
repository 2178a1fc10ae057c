// Package pkg provides the libraries behind bingocards.
//
// # Overview
//
// Bingocards prints strips of 3×9 bingo tickets filled with Greek letters.
// Within a strip, letters that were already used are less likely to be
// picked again, so every strip spreads the alphabet evenly.
//
//  1. [alphabet] - symbols and the 48-letter Greek alphabet
//  2. [ticket] - masks, weighted symbol selection, tickets and strips
//  3. [layout] - page geometry and ticket placement
//  4. [render] - SVG, JSON, PNG and PDF output
//  5. [pipeline] - orchestration (generate → layout → render) with caching
//  6. [cache], [archive] - artifact cache and strip archive backends
//  7. [draw] - the caller's draw pool
//  8. [server] - HTTP API
//
// # Data Flow
//
//	seed
//	  ↓
//	[ticket] Generator (masks + weighted selection, shared usage counter)
//	  ↓
//	[layout] Plan (one rectangle per ticket on the page)
//	  ↓
//	[render] SVG/JSON/PNG/PDF
//
// # Quick Start
//
//	g := ticket.NewGenerator(alphabet.Greek(), ticket.NewRand(42))
//	strip, _, err := g.Generate(ticket.DefaultStripSize)
//	if err != nil {
//	    return err
//	}
//	page, err := render.NewPage(strip, layout.DefaultGeometry())
//	if err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(page)
package pkg
