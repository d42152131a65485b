// Package pagecursor resolves page navigation against a paginated data source
// that can only answer "what is on page N".
//
// A Cursor tracks the page currently displayed and, once discovered, the last
// page that holds data for the active Query. Navigation requests are resolved
// to a page that actually exists:
//   - Next/Prev move one page and refuse to step past known bounds
//   - JumpTo accepts any positive page number and, when the target lies past
//     the end, binary-searches for the real last page
//   - SetQuery discards everything learned when filters, sort or page size change
//
// The data source is injected as a Fetcher; the cursor never retries and
// never caches more than the page it currently resolves to.
package pagecursor
