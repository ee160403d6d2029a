// Package creator manages hand-authored mnemonic assets: the uppercase word
// to mnemonic map in mnemonics.json and the matching images under
// images/creator. It also imports such assets from an export directory.
package creator
