package main

// _version is the version of chromapost.
//
// Releases overwrite this with the tagged version at build time.
var _version = "(unreleased)"
