package cli

var PrintAssessment = printAssessment
