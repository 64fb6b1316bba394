/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/elicaapp/elicappWeb/cmd"

func main() {
	cmd.Execute()
}
