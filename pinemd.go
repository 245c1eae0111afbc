// Package pinemd combines the TradingView Pine Script v6 User Manual into
// a single Markdown document, with optional PDF export. It fetches the
// manual's index page, downloads every chapter (caching the raw HTML on
// disk), converts each chapter to Markdown with a site-specific structural
// converter, and assembles the result behind a generated table of contents.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/) or their
// function (htmlmd/, build/).
package pinemd
