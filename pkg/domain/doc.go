/*
Package domain contains the core domain models of the screenwalk harness.

It defines the fundamental entities of the navigation graph, such as Screens,
Actions, Transitions and the primitive Steps that drive the application under
test. This package is kept pure and free of I/O, following Hexagonal
Architecture principles.

# Key Entities

  - Screen: A named UI state of the application (closed enumeration).
  - Action: A named operation hosted on one or more screens (closed enumeration).
  - Transition: An edge between screens, with the steps that perform it.
  - Step: A primitive interaction (tap, type, press, wait) against a Selector.
  - UserState: The explicit configuration passed into each action invocation.
  - Graph: The validated screen graph walked by the navigator.
  - Report: The outcome of a suite run.
*/
package domain
