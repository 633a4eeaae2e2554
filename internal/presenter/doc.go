// Package presenter hands a finished calendar link to the user.
//
// A presenter never changes the link it is given. The DOM presenter inserts a
// styled anchor as the first child of the page's recruit box, the text
// presenter prints a terminal button, and the Telegram presenter sends the
// link to a chat. Callers must not present an empty link.
package presenter
