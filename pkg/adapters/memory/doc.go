// Package memory provides in-memory hardware for the controller: recording
// actuators and scripted sensors. It backs the simulator and every test that
// needs a robot without a robot.
package memory
