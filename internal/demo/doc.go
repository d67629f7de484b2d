// Package demo is the sample page served by `uihooks serve` and the
// scripted scenarios played by `uihooks demo`.
package demo
