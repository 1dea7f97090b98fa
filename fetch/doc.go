// Package fetch retrieves the latest exchange rates from public sources.
//
// mindicador.cl publishes the Chilean indicators (euro, dollar and UF in CLP),
// the European Central Bank publishes the daily euro reference rates. Results
// are plain cashflow.Rates, to be applied with Snapshot.Update and
// cashflow.SourceAuto.
package fetch
