// Package pagination holds the page flags shared by the archivectl list commands.
//
// It contains:
//   - Params: --page, --jump, --page-size and --sort parsing and validation
//   - Meta: where a listing landed, reported with JSON output and in footers
//   - Sorter: client-side sorting for lists the API does not page, such as authors
package pagination
