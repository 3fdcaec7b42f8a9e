// Command pin-reader polls the keypad matrix and prints every key it sees.
// It is used to check the wiring before running the lock.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/stianeikeland/go-rpio/v4"

	"bast-security/keypad-lock/internal/config"
	"bast-security/keypad-lock/internal/keypad"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Location of the lock's YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := rpio.Open(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rpio.Close()

	//////////OUTPUTS//////////
	var outputs [keypad.Rows]rpio.Pin
	for i, n := range cfg.RowPins() {
		outputs[i] = rpio.Pin(n)
		outputs[i].Output()
		outputs[i].Low()
	}

	//////////INPUTS//////////
	var inputs [keypad.Columns]rpio.Pin
	for i, n := range cfg.ColumnPins() {
		inputs[i] = rpio.Pin(n)
		inputs[i].Input()
		inputs[i].PullDown()
	}

	var wasPressed [keypad.Rows][keypad.Columns]bool

	//variable will be saving the keys seen since the last #
	userPin := ""

	for {
		//for loop will loop through the outputs
		for row := 0; row < keypad.Rows; row++ {
			outputs[row].High()
			time.Sleep(time.Millisecond)

			//for loop will loop through the inputs
			for column := 0; column < keypad.Columns; column++ {
				level := inputs[column].Read()
				if level == rpio.High && !wasPressed[row][column] {
					wasPressed[row][column] = true

					k, err := keypad.Decode(column+1, row)
					if err != nil {
						continue
					}
					fmt.Printf("%s\n", k)

					//# ends a line of keys
					if k.Symbol == '#' {
						fmt.Println(userPin)
						userPin = ""
						continue
					}
					userPin += k.Symbol.String()
				} else if level == rpio.Low {
					wasPressed[row][column] = false
				}
			}

			outputs[row].Low()
		}
	}
}
