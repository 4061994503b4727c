// Package output renders pod and deployment summaries as fixed-width console
// rows.
//
// Every function in this package is pure: it takes already-fetched values and
// returns strings. Missing values are replaced by placeholders so that a
// partially populated API object can always be printed.
//
//	fmt.Println(output.PodHeader())
//	for _, p := range pods {
//		fmt.Println(output.PodRow(p))
//	}
package output
