// Command hlslspvc is the HLSL-to-SPIR-V code generator CLI.
//
// Usage:
//
//	hlslspvc compile [flags]
//
// Examples:
//
//	hlslspvc compile --demo passthrough -o out.spv
//	hlslspvc compile --demo switch --entry main --profile ps_6_0 -o switch.spv
//	hlslspvc --version
package main

func main() {
	Execute()
}
