// Equation File Generator
//
// This tool generates a large file of candidate equations for performance
// testing and profiling of `polyeq check`. It mixes equations in one
// variable, equations in several variables, and lines that are not
// equations at all.
//
// Usage:
//
//	go run main.go > large.txt
//	go run main.go 20000000 > large.txt  # Specify target size in bytes
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
	maxTerms          = 8
	maxExponent       = 9
)

var variables = []string{"x", "y", "z", "t", "n", "alpha", "beta"}

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	writeHeader()

	bytesWritten := 0
	lineCount := 0

	for bytesWritten < targetSize {
		var line string

		switch rand.Intn(10) {
		case 0, 1, 2, 3, 4: // 50% - Equation in one variable
			line = generateEquation(variables[rand.Intn(len(variables))])
		case 5, 6: // 20% - Equation in several variables
			line = generateEquation(variables...)
		case 7: // 10% - Constants only
			line = generateEquation()
		case 8: // 10% - Negative exponent
			line = generateNegativeExponent()
		case 9: // 10% - Missing right-hand side
			line = strings.SplitN(generateEquation("x"), "=", 2)[0]
		}

		line += "\n"
		fmt.Print(line)
		bytesWritten += len(line)
		lineCount++
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d lines\n", bytesWritten, lineCount)
}

func writeHeader() {
	fmt.Println("# Large equation file for performance testing")
	fmt.Println("# Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println()
}

// generateEquation returns "<expr> = <expr>" where every term uses one of
// the given variables, or no variable at all when none are given.
func generateEquation(vars ...string) string {
	return generateExpression(vars) + " = " + generateExpression(vars)
}

func generateExpression(vars []string) string {
	var b strings.Builder

	if rand.Intn(4) == 0 {
		b.WriteString("-")
	}

	terms := rand.Intn(maxTerms) + 1
	for i := 0; i < terms; i++ {
		if i > 0 {
			if rand.Intn(2) == 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
			}
		}
		b.WriteString(generateTerm(vars))
	}

	return b.String()
}

func generateTerm(vars []string) string {
	if len(vars) == 0 || rand.Intn(5) == 0 {
		return randNumber()
	}

	variable := vars[rand.Intn(len(vars))]
	term := variable
	if rand.Intn(2) == 0 {
		term = randNumber() + variable
	}
	if rand.Intn(2) == 0 {
		term += "^" + strconv.Itoa(rand.Intn(maxExponent+1))
	}
	return term
}

func generateNegativeExponent() string {
	return fmt.Sprintf("%sx^-%d = %s", randNumber(), rand.Intn(maxExponent)+1, randNumber())
}

func randNumber() string {
	if rand.Intn(4) == 0 {
		return fmt.Sprintf("%.2f", rand.Float64()*100)
	}
	return strconv.Itoa(rand.Intn(100) + 1)
}
