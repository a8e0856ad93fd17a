package publisher

var BuildMessage = buildMessage
